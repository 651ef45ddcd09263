// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// This file implements the bounded busy-wait used for PLL, gate and frequency meter status bits.
package regs

import (
	"time"

	"k8s.io/klog/v2"
)

const POLL_INTERVAL = time.Millisecond // one iteration
const POLL_DEFAULT_COUNT = 100         // iterations

// Poller is owned by one register block instance. An adaptive poller remembers the slowest
// successful wait and caps later waits at twice that plus two iterations.
type Poller struct {
	Count    int
	Interval time.Duration
	Adaptive bool
	Sleep    func(time.Duration)

	maxWait int
}

func (p *Poller) limit() int {
	if p.Adaptive && p.maxWait > 0 {
		return p.maxWait*2 + 2
	}
	if p.Count > 0 {
		return p.Count
	}
	return POLL_DEFAULT_COUNT
}

func (p *Poller) sleep() {
	d := p.Interval
	if d == 0 {
		d = POLL_INTERVAL
	}
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Wait calls done until it reports true or the iteration cap is reached.
// There is no retry beyond the cap.
func (p *Poller) Wait(done func() bool) bool {
	limit := p.limit()
	i := 0
	for ; i < limit && !done(); i++ {
		p.sleep()
	}
	if !done() {
		klog.V(DBG_LVL_INFO).InfoS("regs.Poller.Wait: timed out", "iterations", i)
		return false
	}
	if i > p.maxWait {
		p.maxWait = i
	}
	klog.V(DBG_LVL_DEEP_DETAIL).InfoS("regs.Poller.Wait", "iterations", i, "maxWait", p.maxWait)
	return true
}

// MaxWait returns the slowest successful wait observed so far.
func (p *Poller) MaxWait() int {
	return p.maxWait
}
