// Package mock provides test doubles for the ai package interfaces.
//
// Mocks default to deterministic behavior so tests are reproducible without
// external services; function fields allow injecting custom behavior,
// including errors.
package mock
