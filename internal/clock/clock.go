package clock

import "time"

// Clock abstrai o relógio de parede para os use cases que filtram por
// "agora" (disponibilidade, antecedência de criação). Os testes injetam
// instantes fixos.
type Clock interface {
	Now() time.Time
}

// System lê o relógio real. Todos os instantes do sistema são UTC naive.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed devolve sempre o mesmo instante.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
