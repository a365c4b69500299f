package cmd

import "time"

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	CommissionRate     float64
	AutoAssignSchedule string
	ShutdownTimeout    time.Duration
}
