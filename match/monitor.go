package match

import "github.com/poiesic/grantmatch/core"

// Monitor provides hooks to observe the matching process.
// Implement this interface to track intermediate steps and results during a
// matching request.
type Monitor interface {
	Start(req *Request)
	AfterNormalize(profile core.Profile)
	AfterFilter(candidates []*core.Grant)
	AfterEmbed(dimensions int)
	Degraded(reason string)
	Finish(resp *Response)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *Request)                 {}
func (n *noopMonitor) AfterNormalize(_ core.Profile)    {}
func (n *noopMonitor) AfterFilter(_ []*core.Grant)      {}
func (n *noopMonitor) AfterEmbed(_ int)                 {}
func (n *noopMonitor) Degraded(_ string)                {}
func (n *noopMonitor) Finish(_ *Response)               {}
