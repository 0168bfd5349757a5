package signal

// filterWindow is the number of trailing samples the moving average covers.
const filterWindow = 3

// Filter smooths samples with a trailing moving average. The stage is
// optional and off by default; decoding works on the raw samples without it.
type Filter struct {
	src    SampleSource
	window []int
}

func NewFilter(src SampleSource) *Filter {
	return &Filter{
		src:    src,
		window: make([]int, 0, filterWindow),
	}
}

// Next returns the integer mean of the last up to three samples, one value
// per source sample.
func (f *Filter) Next() (int, bool) {
	sample, ok := f.src.Next()
	if !ok {
		return 0, false
	}

	if len(f.window) == filterWindow {
		copy(f.window, f.window[1:])
		f.window[filterWindow-1] = sample
	} else {
		f.window = append(f.window, sample)
	}

	sum := 0
	for _, s := range f.window {
		sum += s
	}
	return sum / len(f.window), true
}
