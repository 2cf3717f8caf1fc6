package dtos

type PostJobRequest struct {
	Title                    string `form:"title"`
	JobType                  string `form:"jobType"`
	Location                 string `form:"location"`
	CompanyName              string `form:"companyName"`
	Introduction             string `form:"introduction"`
	Responsibilities         string `form:"responsibilities"`
	Qualifications           string `form:"qualifications"`
	Offers                   string `form:"offers"`
	Salary                   string `form:"salary"`
	HiringMultipleCandidates string `form:"hiringMultipleCandidates"`
	WebsiteTitle             string `form:"WebsiteTitle"`
	WebsiteURL               string `form:"WebsiteUrl"`
	JobCategory              string `form:"jobCategory"`
}

// JobListQuery holds the optional search filters for the public listing.
type JobListQuery struct {
	City          string `form:"city"`
	JobCategory   string `form:"jobCategory"`
	JobType       string `form:"jobType"`
	SearchKeyword string `form:"searchKeyword"`
}
