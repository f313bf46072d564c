package calendar

const (
	HairCutting         = "Hair cutting"
	Trimming            = "Trimming"
	HairCuttingTrimming = "Hair cutting + Trimming"

	stylePremium = 200
)

// DefaultOptions is the salon's standard day: open 09:00 to 18:30 with a
// morning tea break and a lunch break.
func DefaultOptions() Options {
	return Options{
		Open:  Clock(9, 0),
		Close: Clock(18, 30),
		Breaks: []Interval{
			{Start: Clock(11, 0), End: Clock(11, 30)},
			{Start: Clock(13, 0), End: Clock(14, 0)},
		},
		Services: []Service{
			{Name: HairCutting, Duration: 20, Price: 120},
			{Name: Trimming, Duration: 10, Price: 50},
			{Name: HairCuttingTrimming, Duration: 30, Price: 150},
		},
		Styles: []Style{
			{Name: "Pompadour", BaseService: HairCutting, Price: stylePremium},
			{Name: "Fade haircut styles", BaseService: HairCutting, Price: stylePremium},
			{Name: "Classic side part", BaseService: HairCutting, Price: stylePremium},
			{Name: "Drop fade", BaseService: HairCutting, Price: stylePremium},
			{Name: "High fade", BaseService: HairCutting, Price: stylePremium},
			{Name: "Undercut", BaseService: HairCutting, Price: stylePremium},
		},
		BufferMinutes: 5,
		StepMinutes:   DefaultStepMinutes,
	}
}

func DefaultRules() *Rules {
	r, err := NewRules(DefaultOptions())
	if err != nil {
		panic(err)
	}
	return r
}
