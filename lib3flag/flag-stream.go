package lib3flag

import (
	"fmt"
	"io"
	"strings"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/plan-systems/klog"
)

// AddFlagOpts specifies how FlagStream.AddTo treats its target set.
type AddFlagOpts struct {
	AutoCloseSet bool
}

// FlagStream is a pipeline stage emitting flags on Outlet until it is closed.
type FlagStream struct {
	Outlet chan *Flag
}

func NewFlagStream() *FlagStream {
	stream := &FlagStream{
		Outlet: make(chan *Flag, 1),
	}
	return stream
}

// StreamFlags returns a stream that emits the given flags in order and then closes.
func StreamFlags(flags []*Flag) *FlagStream {
	next := NewFlagStream()

	go func() {
		for _, X := range flags {
			next.Outlet <- X
		}
		next.Close()
	}()

	return next
}

func (stream *FlagStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *FlagStream) PushFlag(X *Flag) {
	stream.Outlet <- X
}

// PullAll drains the stream and returns how many flags it emitted.
func (stream *FlagStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Collect drains the stream into a slice.
func (stream *FlagStream) Collect() []*Flag {
	var flags []*Flag
	for X := range stream.Outlet {
		flags = append(flags, X)
	}
	return flags
}

// Print writes a numbered row for each flag passing through.
func (stream *FlagStream) Print(
	out io.Writer,
	opts go3flag.PrintOpts) *FlagStream {

	next := NewFlagStream()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for X := range stream.Outlet {
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
				buf.WriteByte(',')
			}

			count++
			fmt.Fprintf(&buf, "%06d,", count)
			X.WriteAsString(&buf, opts)
			buf.WriteByte('\n')
			io.WriteString(out, buf.String())
			buf.Reset()
			next.Outlet <- X
		}
		next.Close()
	}()

	return next
}

// AddTo passes on only the flags that target has not seen before.
func (stream *FlagStream) AddTo(target CanonicSet, opts AddFlagOpts) *FlagStream {
	next := NewFlagStream()

	go func() {
		for X := range stream.Outlet {
			if target.TryAdd(X) {
				next.Outlet <- X
			}
		}
		if opts.AutoCloseSet {
			if err := target.Close(); err != nil {
				klog.Warningf("closing flag set: %v", err)
			}
		}
		next.Close()
	}()

	return next
}

// SelectAdmissible passes on only the flags admitted by C (checked in full).
func (stream *FlagStream) SelectAdmissible(C Constraints) *FlagStream {
	next := NewFlagStream()

	go func() {
		for X := range stream.Outlet {
			if C.IsAdmissible(X, 0) {
				next.Outlet <- X
			}
		}
		next.Close()
	}()

	return next
}

func (stream *FlagStream) Canonize() *FlagStream {
	next := NewFlagStream()

	go func() {
		for X := range stream.Outlet {
			next.Outlet <- X.Canonize()
		}
		next.Close()
	}()

	return next
}
