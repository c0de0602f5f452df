package usage

import "time"

const periodDays = 30

func defaultUsage() Usage {
	return Usage{
		Plan:     "Clinic",
		Limit:    50,
		Used:     0,
		ResetsAt: time.Now().UTC().Add(periodDays * 24 * time.Hour),
	}
}
