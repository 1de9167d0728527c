package errors

import "errors"

// ErrOptimisticLock indicates the row was modified by a concurrent
// operation between read and write; callers should reload and retry.
var ErrOptimisticLock = errors.New("registro modificado por outra operação, recarregue e tente novamente")
