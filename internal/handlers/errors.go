package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/service-scheduler/internal/payment"
)

type businessMapping struct {
	status  int
	message string
}

var businessErrors = map[string]businessMapping{
	"time_conflict": {http.StatusConflict, "Horário indisponível para este profissional."},
	"booking_busy":  {http.StatusConflict, "Outro agendamento para este profissional está em andamento. Tente novamente."},
	"invalid_state": {http.StatusConflict, "O agendamento não está marcado como falta."},

	"appointment_not_found": {http.StatusNotFound, "Agendamento não encontrado."},
	"company_not_found":     {http.StatusNotFound, "Empresa não encontrada."},

	"service_not_found":        {http.StatusBadRequest, "Serviço não encontrado."},
	"client_not_found":         {http.StatusBadRequest, "Cliente não encontrado."},
	"staff_not_found":          {http.StatusBadRequest, "Profissional não encontrado."},
	"staff_inactive":           {http.StatusBadRequest, "Profissional inativo."},
	"invalid_service_duration": {http.StatusBadRequest, "Serviço sem duração definida."},
	"invalid_date_or_time":     {http.StatusBadRequest, "Data ou hora inválida."},
	"invalid_date":             {http.StatusBadRequest, "Data inválida."},
	"invalid_date_range":       {http.StatusBadRequest, "Período inválido."},
	"invalid_status":           {http.StatusBadRequest, "Status inválido."},
	"invalid_range":            {http.StatusBadRequest, "Período do painel inválido."},
	"nothing_to_charge":        {http.StatusBadRequest, "Agendamento sem valor a cobrar."},
}

// writeError maps use case errors onto the JSON error body.
func writeError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		if m, known := businessErrors[code]; known {
			httperr.Write(c, m.status, code, m.message)
			return
		}
		httperr.BadRequest(c, code, "Requisição inválida.")
		return
	}

	switch {
	case errors.Is(err, payment.ErrDisabled):
		httperr.ServiceUnavailable(c, "payments_disabled", "Cobrança não configurada.")
		return
	case errors.Is(err, storage.ErrDisabled):
		httperr.ServiceUnavailable(c, "export_disabled", "Exportação não configurada.")
		return
	}

	zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	httperr.Internal(c, "internal_error", "Erro interno.")
}
