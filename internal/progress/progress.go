package progress

// Func receives advisory completion percentages in [0, 100]. Values are
// throttled by the emitter and are not guaranteed monotonic or evenly
// spaced; only the final 100 is guaranteed on completion.
type Func func(percent int)

// Emit reports done/total through fn. A nil fn and a non-positive total
// are both tolerated, so callers never have to guard the callback.
func Emit(fn Func, done, total int) {
	if fn == nil {
		return
	}
	if total < 1 {
		total = 1
	}
	p := done * 100 / total
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	fn(p)
}

// Done reports completion.
func Done(fn Func) {
	if fn != nil {
		fn(100)
	}
}
