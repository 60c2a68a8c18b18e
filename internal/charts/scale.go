package charts

// LinearScale maps a data domain onto pixel coordinates. x and y axes get
// independent scales computed from the data's own extent (or a fixed
// domain for percentage charts).
type LinearScale struct {
	DomainMin float64
	DomainMax float64
	RangeMin  float64
	RangeMax  float64
}

func NewLinearScale(domainMin, domainMax, rangeMin, rangeMax float64) LinearScale {
	return LinearScale{
		DomainMin: domainMin,
		DomainMax: domainMax,
		RangeMin:  rangeMin,
		RangeMax:  rangeMax,
	}
}

func (s LinearScale) Map(v float64) float64 {
	span := s.DomainMax - s.DomainMin
	if span == 0 {
		return s.RangeMin
	}
	return s.RangeMin + (v-s.DomainMin)/span*(s.RangeMax-s.RangeMin)
}
