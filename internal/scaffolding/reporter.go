package scaffolding

// Intro describes the component about to be generated.
type Intro struct {
	Name      string
	Dir       string
	Extension string
	Variant   string
	// Variants lists every variant the active templates offer for the
	// component's family.
	Variants []string
	Style    bool
	DryRun   bool
}

// Reporter receives progress events from the pipeline. It never feeds
// anything back.
type Reporter interface {
	Intro(intro Intro)
	ItemCompleted(message string)
	Warning(message string)
	Error(err error)
	Conclusion(result Result)
}

// Confirmer answers yes/no questions, typically by asking the user.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// AutoConfirm answers every question with its own value.
type AutoConfirm bool

// Confirm implements Confirmer.
func (a AutoConfirm) Confirm(string) (bool, error) { return bool(a), nil }

type nopReporter struct{}

func (nopReporter) Intro(Intro)          {}
func (nopReporter) ItemCompleted(string) {}
func (nopReporter) Warning(string)       {}
func (nopReporter) Error(error)          {}
func (nopReporter) Conclusion(Result)    {}
