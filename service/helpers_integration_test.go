package service_test

import "time"

var kickoffTime = time.Date(2022, 12, 10, 22, 0, 42, 0, time.UTC)
