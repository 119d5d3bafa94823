package usecase

import "time"

// timeNow is swapped in tests to pin created_at.
var timeNow = time.Now
