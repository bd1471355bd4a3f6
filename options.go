package reveal

import (
	"fmt"
	"math"
)

// Callback is a lifecycle hook invoked with the target element. Defaults
// resolve every callback to a no-op, so invocation sites never see nil.
type Callback func(ElementRef)

// noop is the universal default callback.
func noop(ElementRef) {}

// CustomEasing holds the four cubic-bezier control values (x1, y1, x2, y2)
// used when Easing is EasingCustom.
type CustomEasing [4]float64

// Transition names one of the built-in reveal transitions.
type Transition string

const (
	TransitionFly   Transition = "fly"
	TransitionFade  Transition = "fade"
	TransitionBlur  Transition = "blur"
	TransitionScale Transition = "scale"
	TransitionSlide Transition = "slide"
	TransitionSpin  Transition = "spin"
)

// Easing names the timing curve applied to the transition: one of 26 named
// curves, or EasingCustom with a CustomEasing tuple.
type Easing string

const (
	EasingLinear     Easing = "linear"
	EasingEase       Easing = "ease"
	EasingInSine     Easing = "easeInSine"
	EasingOutSine    Easing = "easeOutSine"
	EasingInOutSine  Easing = "easeInOutSine"
	EasingInQuad     Easing = "easeInQuad"
	EasingOutQuad    Easing = "easeOutQuad"
	EasingInOutQuad  Easing = "easeInOutQuad"
	EasingInCubic    Easing = "easeInCubic"
	EasingOutCubic   Easing = "easeOutCubic"
	EasingInOutCubic Easing = "easeInOutCubic"
	EasingInQuart    Easing = "easeInQuart"
	EasingOutQuart   Easing = "easeOutQuart"
	EasingInOutQuart Easing = "easeInOutQuart"
	EasingInQuint    Easing = "easeInQuint"
	EasingOutQuint   Easing = "easeOutQuint"
	EasingInOutQuint Easing = "easeInOutQuint"
	EasingInExpo     Easing = "easeInExpo"
	EasingOutExpo    Easing = "easeOutExpo"
	EasingInOutExpo  Easing = "easeInOutExpo"
	EasingInCirc     Easing = "easeInCirc"
	EasingOutCirc    Easing = "easeOutCirc"
	EasingInOutCirc  Easing = "easeInOutCirc"
	EasingInBack     Easing = "easeInBack"
	EasingOutBack    Easing = "easeOutBack"
	EasingInOutBack  Easing = "easeInOutBack"
	EasingCustom     Easing = "custom"
)

// Options is a complete per-element options record. Instances produced by
// the merge engine are total: every field is defined and every callback is
// callable. Validation assumes that totality and checks values only.
type Options struct {
	// Visibility and debug controls.
	Disable        bool
	Debug          bool
	Ref            string
	HighlightLogs  bool
	HighlightColor string

	// Observer overrides for this element.
	Root         ElementRef
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
	Threshold    float64 `validate:"gte=0,lte=1"`

	// Animation parameters.
	Transition   Transition `validate:"oneof=fly fade blur scale slide spin"`
	Reset        bool
	Delay        float64 `validate:"gte=0"`
	Duration     float64 `validate:"gte=0"`
	Easing       Easing  `validate:"oneof=linear ease easeInSine easeOutSine easeInOutSine easeInQuad easeOutQuad easeInOutQuad easeInCubic easeOutCubic easeInOutCubic easeInQuart easeOutQuart easeInOutQuart easeInQuint easeOutQuint easeInOutQuint easeInExpo easeOutExpo easeInOutExpo easeInCirc easeOutCirc easeInOutCirc easeInBack easeOutBack easeInOutBack custom"`
	CustomEasing CustomEasing
	X            float64
	Y            float64
	Rotate       float64
	Opacity      float64 `validate:"gte=0,lte=1"`
	Blur         float64 `validate:"gte=0"`
	Scale        float64 `validate:"gte=0"`

	// Lifecycle hooks, invoked by the rendering layer.
	OnRevealStart Callback
	OnRevealEnd   Callback
	OnResetStart  Callback
	OnResetEnd    Callback
	OnMount       Callback
	OnUpdate      Callback
	OnDestroy     Callback
}

// DefaultOptions returns the factory default element options. Zero-valued
// fields (margins, delay, opacity, scale, the flags) are meaningful defaults
// in their own right.
func DefaultOptions() Options {
	return Options{
		HighlightColor: "tomato",
		Threshold:      0.6,
		Transition:     TransitionFly,
		Duration:       800,
		Easing:         EasingCustom,
		CustomEasing:   CustomEasing{0.25, 0.1, 0.25, 0.1},
		X:              -20,
		Y:              -20,
		Rotate:         -360,
		Blur:           16,
		OnRevealStart:  noop,
		OnRevealEnd:    noop,
		OnResetStart:   noop,
		OnResetEnd:     noop,
		OnMount:        noop,
		OnUpdate:       noop,
		OnDestroy:      noop,
	}
}

// Validate checks every field range and enum constraint, and the
// cross-field rule that a custom easing carries a finite control tuple.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if o.Easing == EasingCustom {
		for _, p := range o.CustomEasing {
			if math.IsNaN(p) || math.IsInf(p, 0) {
				return fmt.Errorf("%w: customEasing components must be finite", ErrInvalidOptions)
			}
		}
	}
	return nil
}

// OptionsPatch is the partial form of Options: every field optional. Nil
// fields inherit the stored default during merge. Callbacks and Root are
// excluded from (de)serialization since documents cannot carry functions or
// element references.
type OptionsPatch struct {
	Disable        *bool   `json:"disable,omitempty" yaml:"disable,omitempty"`
	Debug          *bool   `json:"debug,omitempty" yaml:"debug,omitempty"`
	Ref            *string `json:"ref,omitempty" yaml:"ref,omitempty"`
	HighlightLogs  *bool   `json:"highlightLogs,omitempty" yaml:"highlightLogs,omitempty"`
	HighlightColor *string `json:"highlightColor,omitempty" yaml:"highlightColor,omitempty"`

	Root         ElementRef `json:"-" yaml:"-"`
	MarginTop    *int       `json:"marginTop,omitempty" yaml:"marginTop,omitempty"`
	MarginRight  *int       `json:"marginRight,omitempty" yaml:"marginRight,omitempty"`
	MarginBottom *int       `json:"marginBottom,omitempty" yaml:"marginBottom,omitempty"`
	MarginLeft   *int       `json:"marginLeft,omitempty" yaml:"marginLeft,omitempty"`
	Threshold    *float64   `json:"threshold,omitempty" yaml:"threshold,omitempty"`

	Transition   *Transition   `json:"transition,omitempty" yaml:"transition,omitempty"`
	Reset        *bool         `json:"reset,omitempty" yaml:"reset,omitempty"`
	Delay        *float64      `json:"delay,omitempty" yaml:"delay,omitempty"`
	Duration     *float64      `json:"duration,omitempty" yaml:"duration,omitempty"`
	Easing       *Easing       `json:"easing,omitempty" yaml:"easing,omitempty"`
	CustomEasing *CustomEasing `json:"customEasing,omitempty" yaml:"customEasing,omitempty"`
	X            *float64      `json:"x,omitempty" yaml:"x,omitempty"`
	Y            *float64      `json:"y,omitempty" yaml:"y,omitempty"`
	Rotate       *float64      `json:"rotate,omitempty" yaml:"rotate,omitempty"`
	Opacity      *float64      `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Blur         *float64      `json:"blur,omitempty" yaml:"blur,omitempty"`
	Scale        *float64      `json:"scale,omitempty" yaml:"scale,omitempty"`

	OnRevealStart Callback `json:"-" yaml:"-"`
	OnRevealEnd   Callback `json:"-" yaml:"-"`
	OnResetStart  Callback `json:"-" yaml:"-"`
	OnResetEnd    Callback `json:"-" yaml:"-"`
	OnMount       Callback `json:"-" yaml:"-"`
	OnUpdate      Callback `json:"-" yaml:"-"`
	OnDestroy     Callback `json:"-" yaml:"-"`
}

// merge overlays the patch onto base: present fields win, absent fields keep
// the base value. base arrives by value, so the result shares no mutable
// storage with the caller's copy.
func (p OptionsPatch) merge(base Options) Options {
	out := base

	if p.Disable != nil {
		out.Disable = *p.Disable
	}
	if p.Debug != nil {
		out.Debug = *p.Debug
	}
	if p.Ref != nil {
		out.Ref = *p.Ref
	}
	if p.HighlightLogs != nil {
		out.HighlightLogs = *p.HighlightLogs
	}
	if p.HighlightColor != nil {
		out.HighlightColor = *p.HighlightColor
	}

	if p.Root != nil {
		out.Root = p.Root
	}
	if p.MarginTop != nil {
		out.MarginTop = *p.MarginTop
	}
	if p.MarginRight != nil {
		out.MarginRight = *p.MarginRight
	}
	if p.MarginBottom != nil {
		out.MarginBottom = *p.MarginBottom
	}
	if p.MarginLeft != nil {
		out.MarginLeft = *p.MarginLeft
	}
	if p.Threshold != nil {
		out.Threshold = *p.Threshold
	}

	if p.Transition != nil {
		out.Transition = *p.Transition
	}
	if p.Reset != nil {
		out.Reset = *p.Reset
	}
	if p.Delay != nil {
		out.Delay = *p.Delay
	}
	if p.Duration != nil {
		out.Duration = *p.Duration
	}
	if p.Easing != nil {
		out.Easing = *p.Easing
	}
	if p.CustomEasing != nil {
		out.CustomEasing = *p.CustomEasing
	}
	if p.X != nil {
		out.X = *p.X
	}
	if p.Y != nil {
		out.Y = *p.Y
	}
	if p.Rotate != nil {
		out.Rotate = *p.Rotate
	}
	if p.Opacity != nil {
		out.Opacity = *p.Opacity
	}
	if p.Blur != nil {
		out.Blur = *p.Blur
	}
	if p.Scale != nil {
		out.Scale = *p.Scale
	}

	if p.OnRevealStart != nil {
		out.OnRevealStart = p.OnRevealStart
	}
	if p.OnRevealEnd != nil {
		out.OnRevealEnd = p.OnRevealEnd
	}
	if p.OnResetStart != nil {
		out.OnResetStart = p.OnResetStart
	}
	if p.OnResetEnd != nil {
		out.OnResetEnd = p.OnResetEnd
	}
	if p.OnMount != nil {
		out.OnMount = p.OnMount
	}
	if p.OnUpdate != nil {
		out.OnUpdate = p.OnUpdate
	}
	if p.OnDestroy != nil {
		out.OnDestroy = p.OnDestroy
	}

	return out
}
