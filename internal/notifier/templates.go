package notifier

import "strings"

// Tipos de evento — as chaves vêm do contrato com os apps clientes,
// não traduzir.
const (
	EventAppointmentCreated   = "appointment_created"
	EventAppointmentConfirmed = "appointment_confirmed"
	EventAppointmentCancelled = "appointment_cancelled"
	EventAppointmentReminder  = "appointment_reminder"
	EventReviewRequest        = "review_request"
	EventBarberNewAppointment = "barber_new_appointment"
)

type Template struct {
	Title   string
	Message string
}

// Placeholders no formato {chave}, preenchidos por Render.
var DefaultTemplates = map[string]Template{
	EventAppointmentCreated: {
		Title:   "Novo Agendamento",
		Message: "Você agendou {service_name} com {barber_name} em {date} às {time}. Status: pendente de confirmação.",
	},
	EventAppointmentConfirmed: {
		Title:   "Agendamento Confirmado",
		Message: "Seu horário de {service_name} com {barber_name} foi confirmado para {date} às {time}. Te esperamos! 💈",
	},
	EventAppointmentCancelled: {
		Title:   "Agendamento Cancelado",
		Message: "Seu horário de {service_name} em {date} foi cancelado. Você pode reagendar quando quiser.",
	},
	EventAppointmentReminder: {
		Title:   "Lembrete de Agendamento",
		Message: "🔔 Lembrete: você tem um horário amanhã às {time} para {service_name} com {barber_name}.",
	},
	EventReviewRequest: {
		Title:   "Como foi seu atendimento?",
		Message: "Esperamos que tenha gostado do seu {service_name} com {barber_name}. Conta pra gente como foi!",
	},
	EventBarberNewAppointment: {
		Title:   "Novo Cliente na Agenda",
		Message: "Novo agendamento: {service_name} com {client_name} em {date} às {time}. Confira sua agenda!",
	},
}

// Render substitui cada {chave} presente em data. Placeholders sem valor
// ficam intactos no texto.
func Render(tpl string, data map[string]string) string {
	out := tpl
	for k, v := range data {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}
