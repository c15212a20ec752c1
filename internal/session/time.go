package session

import "time"

// timeLayout is the timestamp format used in persisted sessions.
const timeLayout = time.RFC3339

// timeNow is a package-level variable for testability.
// Tests can replace this to control time in assertions.
var timeNow = time.Now
