package symptomit

import "errors"

// ErrStorageRequired is returned by operations that need a badger database
// when the engine was created without a storage path.
var ErrStorageRequired = errors.New("engine has no storage configured")
