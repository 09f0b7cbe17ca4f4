package services

import "errors"

// ErrStaleGrid means the sheet changed between the snapshot the allocation
// ran against and the write: a bed the allocator claimed is now occupied.
// The caller should re-fetch and retry.
var ErrStaleGrid = errors.New("sheet changed since allocation, rows no longer free")
