package game

import "errors"

// ErrRoomNotFound is returned when a room code has no live room
var ErrRoomNotFound = errors.New("room not found")
