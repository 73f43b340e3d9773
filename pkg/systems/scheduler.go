package systems

import (
	"container/heap"
	"math"
)

// TimerID 标识一个已注册的定时回调（按注册顺序递增）
type TimerID uint64

// Scheduler 是礼花引擎使用的时钟与定时器接口
//
// 时间单位为秒（float64），与 Update(deltaTime) 一致。
// There is no cancel: every registered callback eventually fires once the
// clock passes its deadline.
type Scheduler interface {
	// Now 返回当前调度器时间
	Now() float64
	// ScheduleAfter 在 Now()+delay 时执行 fn，负延迟按 0 处理
	ScheduleAfter(delay float64, fn func()) TimerID
	// ScheduleAt 在绝对时间 at 执行 fn
	ScheduleAt(at float64, fn func()) TimerID
	// Pending 返回尚未触发的定时器数量
	Pending() int
}

type timer struct {
	id       TimerID
	deadline float64
	fn       func()
}

// timerHeap 按 (deadline, id) 排序的最小堆
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline != h[j].deadline {
		return h[i].deadline < h[j].deadline
	}
	return h[i].id < h[j].id
}
func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)   { *h = append(*h, x.(*timer)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// FrameScheduler 由帧循环驱动的虚拟时钟
//
// Update(dt) advances the clock and then fires every timer whose deadline is
// at or before the new time, in (deadline, registration) order. A callback
// may register further timers; those that are already due fire in the same
// Update. Not safe for concurrent use.
type FrameScheduler struct {
	now    float64
	nextID TimerID
	timers timerHeap
	firing bool
}

// NewFrameScheduler 创建一个从时间 0 开始的调度器
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{nextID: 1}
}

// Now 返回当前虚拟时间（秒）
func (s *FrameScheduler) Now() float64 {
	return s.now
}

// Pending 返回尚未触发的定时器数量
func (s *FrameScheduler) Pending() int {
	return len(s.timers)
}

// ScheduleAfter 注册一个延迟 delay 秒后执行的回调
func (s *FrameScheduler) ScheduleAfter(delay float64, fn func()) TimerID {
	if delay < 0 || math.IsNaN(delay) {
		delay = 0
	}
	return s.ScheduleAt(s.now+delay, fn)
}

// ScheduleAt 注册一个在绝对时间 at 执行的回调
// 过去的时间点会在下一次 Update 中立即触发
func (s *FrameScheduler) ScheduleAt(at float64, fn func()) TimerID {
	if math.IsNaN(at) {
		at = s.now
	}
	id := s.nextID
	s.nextID++
	heap.Push(&s.timers, &timer{id: id, deadline: at, fn: fn})
	return id
}

// Update 推进时钟 deltaTime 秒并触发所有到期的定时器
// 负值或 NaN 的 deltaTime 不推进时钟，但仍会触发已到期的定时器
func (s *FrameScheduler) Update(deltaTime float64) {
	if deltaTime > 0 && !math.IsInf(deltaTime, 0) {
		s.now += deltaTime
	}
	s.fireDue()
}

// AdvanceTo 将时钟推进到绝对时间 t（不会回退）
func (s *FrameScheduler) AdvanceTo(t float64) {
	if t > s.now {
		s.now = t
	}
	s.fireDue()
}

func (s *FrameScheduler) fireDue() {
	// 回调中再次调用 Update 时，由外层循环负责触发
	if s.firing {
		return
	}
	s.firing = true
	defer func() { s.firing = false }()

	for len(s.timers) > 0 && s.timers[0].deadline <= s.now {
		t := heap.Pop(&s.timers).(*timer)
		if t.fn != nil {
			t.fn()
		}
	}
}
