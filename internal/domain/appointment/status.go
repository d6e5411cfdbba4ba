package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ActiveStatuses são os status que seguram o horário na agenda.
// Agendamentos concluídos ou cancelados liberam o intervalo.
var ActiveStatuses = []string{
	string(StatusPending),
	string(StatusConfirmed),
}

// ===============================
// Validations
// ===============================

// IsValidStatus valida pertencimento ao conjunto de status conhecidos.
// A transição em si é livre entre os quatro valores para atores
// autorizados (flexibilidade mantida da versão original).
func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Holding diz se um agendamento com esse status ocupa a agenda.
func Holding(s string) bool {
	return Status(s) == StatusPending || Status(s) == StatusConfirmed
}
