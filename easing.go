package strata

import "github.com/tanema/gween/ease"

// easings maps animation easing names to tween functions. "swing" is the
// default.
var easings = map[string]ease.TweenFunc{
	"linear": ease.Linear,
	"swing":  ease.InOutSine,

	"easeInQuad":       ease.InQuad,
	"easeOutQuad":      ease.OutQuad,
	"easeInOutQuad":    ease.InOutQuad,
	"easeInCubic":      ease.InCubic,
	"easeOutCubic":     ease.OutCubic,
	"easeInOutCubic":   ease.InOutCubic,
	"easeInQuart":      ease.InQuart,
	"easeOutQuart":     ease.OutQuart,
	"easeInOutQuart":   ease.InOutQuart,
	"easeInQuint":      ease.InQuint,
	"easeOutQuint":     ease.OutQuint,
	"easeInOutQuint":   ease.InOutQuint,
	"easeInSine":       ease.InSine,
	"easeOutSine":      ease.OutSine,
	"easeInOutSine":    ease.InOutSine,
	"easeInExpo":       ease.InExpo,
	"easeOutExpo":      ease.OutExpo,
	"easeInOutExpo":    ease.InOutExpo,
	"easeInCirc":       ease.InCirc,
	"easeOutCirc":      ease.OutCirc,
	"easeInOutCirc":    ease.InOutCirc,
	"easeInElastic":    ease.InElastic,
	"easeOutElastic":   ease.OutElastic,
	"easeInOutElastic": ease.InOutElastic,
	"easeInBack":       ease.InBack,
	"easeOutBack":      ease.OutBack,
	"easeInOutBack":    ease.InOutBack,
	"easeInBounce":     ease.InBounce,
	"easeOutBounce":    ease.OutBounce,
	"easeInOutBounce":  ease.InOutBounce,
}

// Easing returns the tween function registered under name. Unknown names
// fall back to "swing" and report false.
func Easing(name string) (ease.TweenFunc, bool) {
	if name == "" {
		return easings["swing"], true
	}
	fn, ok := easings[name]
	if !ok {
		return easings["swing"], false
	}
	return fn, true
}
