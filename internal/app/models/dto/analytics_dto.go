package dto

// EmailEngagement holds click/view figures with their derived rates.
// Rates are percentages; a zero denominator yields 0, never NaN.
type EmailEngagement struct {
	EmailsSent            int64   `json:"emailsSent"`
	TotalClicks           int64   `json:"totalClicks"`
	UniqueViews           int64   `json:"uniqueViews"`
	ViewRate              float64 `json:"viewRate" example:"62.5"`
	AverageClicksPerEmail float64 `json:"averageClicksPerEmail" example:"1.4"`
}

// ProjectAnalyticsResponse joins a project's application counters with its
// email engagement figures.
type ProjectAnalyticsResponse struct {
	ProjectID           string          `json:"projectId"`
	TotalApplications   int64           `json:"totalApplications"`
	TotalInterviews     int64           `json:"totalInterviews"`
	TotalAcceptedOffers int64           `json:"totalAcceptedOffers"`
	TotalDeclinedOffers int64           `json:"totalDeclinedOffers"`
	InterviewRate       float64         `json:"interviewRate" example:"40"`
	OfferAcceptanceRate float64         `json:"offerAcceptanceRate" example:"75"`
	Email               EmailEngagement `json:"email"`
}

// GlobalAnalyticsResponse aggregates counters across every project.
type GlobalAnalyticsResponse struct {
	TotalProjects       int64                      `json:"totalProjects"`
	TotalApplications   int64                      `json:"totalApplications"`
	TotalInterviews     int64                      `json:"totalInterviews"`
	TotalAcceptedOffers int64                      `json:"totalAcceptedOffers"`
	TotalDeclinedOffers int64                      `json:"totalDeclinedOffers"`
	InterviewRate       float64                    `json:"interviewRate"`
	OfferAcceptanceRate float64                    `json:"offerAcceptanceRate"`
	Email               EmailEngagement            `json:"email"`
	Projects            []ProjectAnalyticsResponse `json:"projects,omitempty"`
}
