/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import "bracket-bot/predictor/shared"

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	SaveInitial(t *shared.Tournament) error
	SaveCheckpoint(t *shared.Tournament, gameID string) error
	SaveErrorCheckpoint(t *shared.Tournament, gameID string, runErr error) error
	SaveRoundCheckpoint(t *shared.Tournament, roundNumber int) error
	SaveFinal(t *shared.Tournament) (string, error)
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)
