package metrics

// Noop is a Provider whose instruments discard every measurement. The thread
// pool does not use it as a default: without WithMetrics it records nothing.
type Noop struct{}

func (Noop) Counter(string, ...InstrumentOption) Counter             { return noopCounter{} }
func (Noop) UpDownCounter(string, ...InstrumentOption) UpDownCounter { return noopUpDownCounter{} }
func (Noop) Histogram(string, ...InstrumentOption) Histogram         { return noopHistogram{} }

type noopCounter struct{}

func (noopCounter) Add(int64) {}

type noopUpDownCounter struct{}

func (noopUpDownCounter) Add(int64) {}

type noopHistogram struct{}

func (noopHistogram) Record(float64) {}
