package spec

import "time"

// timeNow is a package-level variable for testability.
// Tests can replace this to control the generation-date footer.
var timeNow = time.Now
