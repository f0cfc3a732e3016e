// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package weave

import (
	"context"
	"testing"

	"github.com/weavelang/weave/lang"
	"github.com/weavelang/weave/sched"
)

// counterBody implements scenario S4: a weave that counts up from its
// first_resume_value, yielding the running total on each resume and
// returning the final total once it has yielded n times.
func counterBody(n int) Body {
	return func(ctx *Ctx, first lang.Value) (lang.Value, error) {
		total := first.AsInt()
		for i := 0; i < n; i++ {
			resumeVal, err := ctx.Yield(lang.Int(total))
			if err != nil {
				return lang.Value{}, err
			}
			total += resumeVal.AsInt()
		}
		return lang.Int(total), nil
	}
}

func TestWeave_ResumeProtocol(t *testing.T) {
	s := sched.New(2)
	h := Spawn(s, context.Background(), counterBody(3))

	y, more, err := h.Resume(context.Background(), lang.Int(10))
	if err != nil || !more {
		t.Fatalf("first Resume: y=%v more=%v err=%v", y, more, err)
	}
	if y.AsInt() != 10 {
		t.Fatalf("first yield = %d, want 10", y.AsInt())
	}

	y, more, err = h.Resume(context.Background(), lang.Int(1))
	if err != nil || !more {
		t.Fatalf("second Resume: y=%v more=%v err=%v", y, more, err)
	}
	if y.AsInt() != 11 {
		t.Fatalf("second yield = %d, want 11", y.AsInt())
	}

	y, more, err = h.Resume(context.Background(), lang.Int(2))
	if err != nil || !more {
		t.Fatalf("third Resume: y=%v more=%v err=%v", y, more, err)
	}
	if y.AsInt() != 13 {
		t.Fatalf("third yield = %d, want 13", y.AsInt())
	}

	// Fourth resume: the body's loop has ended, so the weave returns.
	y, more, err = h.Resume(context.Background(), lang.Int(100))
	if err != nil {
		t.Fatalf("fourth Resume returned error: %v", err)
	}
	if more {
		t.Fatalf("expected has_more=false once the body returns")
	}

	result, err := h.Join()
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if result.AsInt() != 113 {
		t.Fatalf("Join() result = %d, want 113", result.AsInt())
	}

	// Resuming again after has_more=false is an error (§4.5).
	_, _, err = h.Resume(context.Background(), lang.Int(0))
	if err != lang.ReceiveOnClosed {
		t.Fatalf("resume after completion: got %v, want ReceiveOnClosed", err)
	}
}

func TestWeave_CancelUnblocksBody(t *testing.T) {
	s := sched.New(2)
	entered := make(chan struct{})
	h := Spawn(s, context.Background(), func(ctx *Ctx, first lang.Value) (lang.Value, error) {
		close(entered)
		_, err := ctx.Yield(first)
		if err != nil {
			return lang.Value{}, err
		}
		_, err = ctx.Yield(first)
		return lang.Value{}, err
	})

	_, _, err := h.Resume(context.Background(), lang.Int(1))
	if err != nil {
		t.Fatalf("first Resume: %v", err)
	}

	h.Cancel()

	if _, err := h.Join(); err == nil {
		t.Fatalf("expected Join to surface an error after Cancel")
	}
}
