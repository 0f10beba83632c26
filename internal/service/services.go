package service

import (
	"github.com/deppfellow/querybox/internal/server"
)

// Services groups the stateful services. Sum and CaesarShift are plain
// functions and need no container entry.
type Services struct {
	Lotto *LottoService
}

func NewServices(s *server.Server) *Services {
	return &Services{
		Lotto: NewLottoService(s.Logger, DefaultPicker()),
	}
}
