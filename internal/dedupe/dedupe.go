// Package dedupe collapses concurrent identical generation requests.
// When both players in a lobby submit the same classification label at the
// same time, only one call reaches the generative service; the other waits
// for and shares the result.
package dedupe

import "golang.org/x/sync/singleflight"

// StatGeneration guards creature stat generation, keyed by canonical label.
var StatGeneration singleflight.Group
