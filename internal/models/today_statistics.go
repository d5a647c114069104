package models

type VerificationStatus string

const (
	StatusPassed  VerificationStatus = "passed"
	StatusTimeout VerificationStatus = "timeout"
	StatusWronged VerificationStatus = "wronged"
)

type DailyStatistic struct {
	VerificationsCount int `json:"verificationsCount"`
}

func (d *DailyStatistic) Count() int {
	if d == nil {
		return 0
	}
	return d.VerificationsCount
}

// TodayStatistics is the find_today response. Absent sub-objects mean no verifications.
type TodayStatistics struct {
	PassedStatistic  *DailyStatistic `json:"passedStatistic,omitempty"`
	TimeoutStatistic *DailyStatistic `json:"timeoutStatistic,omitempty"`
	WrongedStatistic *DailyStatistic `json:"wrongedStatistic,omitempty"`
}

func (t *TodayStatistics) Passed() int {
	if t == nil {
		return 0
	}
	return t.PassedStatistic.Count()
}

// Failed sums timed-out and wronged verifications.
func (t *TodayStatistics) Failed() int {
	if t == nil {
		return 0
	}
	return t.TimeoutStatistic.Count() + t.WrongedStatistic.Count()
}

// ByStatus returns the counter for a single status.
func (t *TodayStatistics) ByStatus(status VerificationStatus) int {
	if t == nil {
		return 0
	}
	switch status {
	case StatusPassed:
		return t.PassedStatistic.Count()
	case StatusTimeout:
		return t.TimeoutStatistic.Count()
	case StatusWronged:
		return t.WrongedStatistic.Count()
	}
	return 0
}

// StatisticsView is what the sidebar shows. Computing is set while no response has arrived.
type StatisticsView struct {
	Computing bool `json:"computing"`
	Passed    int  `json:"passed"`
	Failed    int  `json:"failed"`
}

func NewStatisticsView(resp *TodayStatistics) StatisticsView {
	if resp == nil {
		return StatisticsView{Computing: true}
	}
	return StatisticsView{
		Passed: resp.Passed(),
		Failed: resp.Failed(),
	}
}
