package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/payment"
)

type CreateNoShowChargeInput struct {
	CompanyID     uuid.UUID
	UserID        uuid.UUID
	AppointmentID uuid.UUID
}

// CreateNoShowCharge bills a missed appointment at its price snapshot.
type CreateNoShowCharge struct {
	repo    domain.Repository
	gateway payment.Gateway
	audit   *audit.Dispatcher
}

func NewCreateNoShowCharge(
	repo domain.Repository,
	gateway payment.Gateway,
	audit *audit.Dispatcher,
) *CreateNoShowCharge {
	return &CreateNoShowCharge{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *CreateNoShowCharge) Execute(
	ctx context.Context,
	in CreateNoShowChargeInput,
) (*payment.Charge, error) {

	if uc.gateway == nil {
		return nil, payment.ErrDisabled
	}

	ap, err := uc.repo.GetAppointment(ctx, in.CompanyID, in.AppointmentID)
	if err != nil {
		return nil, notFoundAs(err, "appointment_not_found")
	}

	if domain.Status(ap.Status) != domain.StatusNoShow {
		return nil, httperr.ErrBusiness("invalid_state")
	}
	if !ap.PriceSnapshot.Valid || !ap.PriceSnapshot.Decimal.IsPositive() {
		return nil, httperr.ErrBusiness("nothing_to_charge")
	}

	title := "No-show"
	if ap.Service.Name != "" {
		title = fmt.Sprintf("No-show: %s", ap.Service.Name)
	}

	charge, err := uc.gateway.CreateCharge(ctx, payment.ChargeRequest{
		Reference:   ap.ID.String(),
		Title:       title,
		Description: ap.StartDatetime.Format("2006-01-02 15:04"),
		Amount:      ap.PriceSnapshot.Decimal,
		PayerEmail:  ap.Client.Email,
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		UserID:    &in.UserID,
		Action:    audit.ActionNoShowChargeCreated,
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata: map[string]string{
			"charge_id": charge.ID,
			"amount":    ap.PriceSnapshot.Decimal.StringFixed(2),
		},
	})

	return charge, nil
}
