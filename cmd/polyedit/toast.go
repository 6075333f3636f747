// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/danielhkuo/polycanvas/models"
)

// Toasts stay up for toastLifetime seconds, the last toastFade of which is
// a fade out.
const (
	toastLifetime = 4.0
	toastFade     = 0.5
	maxToasts     = 4
)

type toast struct {
	severity models.Severity
	message  string
	age      float32
	alpha    float32
	fade     *gween.Tween
}

// toastQueue is the editor's notifier. It is only touched from the game
// loop, so it needs no locking.
type toastQueue struct {
	items []*toast
}

func (q *toastQueue) Notify(severity models.Severity, message string) {
	q.items = append(q.items, &toast{severity: severity, message: message, alpha: 1})
	if len(q.items) > maxToasts {
		q.items = q.items[len(q.items)-maxToasts:]
	}
}

// Update ages every toast by dt seconds and drops finished ones.
func (q *toastQueue) Update(dt float32) {
	kept := q.items[:0]
	for _, t := range q.items {
		t.age += dt
		step := dt
		if t.fade == nil && t.age >= toastLifetime-toastFade {
			t.fade = gween.New(1, 0, toastFade, ease.InQuad)
			step = t.age - (toastLifetime - toastFade)
		}
		if t.fade != nil {
			alpha, done := t.fade.Update(step)
			if done {
				continue
			}
			t.alpha = alpha
		}
		kept = append(kept, t)
	}
	clear(q.items[len(kept):])
	q.items = kept
}

func (q *toastQueue) Len() int {
	return len(q.items)
}
