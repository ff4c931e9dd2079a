// Package dataaccess composes the domain services behind the single facade
// the routing layer calls. Authorization of writes against the acting
// principal happens here, before anything reaches persistence.
package dataaccess

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	auditmodels "github.com/mjza/mra-core-sub001/internal/auditlog/models"
	auditservice "github.com/mjza/mra-core-sub001/internal/auditlog/service"
	geomodels "github.com/mjza/mra-core-sub001/internal/geo/models"
	geoservice "github.com/mjza/mra-core-sub001/internal/geo/service"
	"github.com/mjza/mra-core-sub001/internal/query"
	refmodels "github.com/mjza/mra-core-sub001/internal/reference/models"
	refservice "github.com/mjza/mra-core-sub001/internal/reference/service"
	udmodels "github.com/mjza/mra-core-sub001/internal/userdetails/models"
	udservice "github.com/mjza/mra-core-sub001/internal/userdetails/service"
	domainerrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
	"github.com/mjza/mra-core-sub001/pkg/requestcontext"
)

type Facade struct {
	reference   *refservice.Service
	geo         *geoservice.Service
	auditLog    *auditservice.Service
	userDetails *udservice.Service
	tracer      trace.Tracer
}

func New(reference *refservice.Service, geo *geoservice.Service, auditLog *auditservice.Service, userDetails *udservice.Service) *Facade {
	return &Facade{
		reference:   reference,
		geo:         geo,
		auditLog:    auditLog,
		userDetails: userDetails,
		tracer:      otel.Tracer("dataaccess"),
	}
}

func (f *Facade) GetGenderTypes(ctx context.Context, where query.Expression, p *query.Pagination) ([]refmodels.GenderType, error) {
	ctx, span := f.tracer.Start(ctx, "GetGenderTypes")
	defer span.End()
	return f.reference.GetGenderTypes(ctx, where, p)
}

func (f *Facade) GetTicketCategories(ctx context.Context, where query.Expression, p *query.Pagination) ([]refmodels.TicketCategory, error) {
	ctx, span := f.tracer.Start(ctx, "GetTicketCategories")
	defer span.End()
	return f.reference.GetTicketCategories(ctx, where, p)
}

func (f *Facade) GetCountries(ctx context.Context, where query.Expression, p *query.Pagination) ([]geomodels.Country, error) {
	ctx, span := f.tracer.Start(ctx, "GetCountries")
	defer span.End()
	return f.geo.GetCountries(ctx, where, p)
}

func (f *Facade) GetLocationData(ctx context.Context, lon, lat float64) (*geomodels.Location, error) {
	ctx, span := f.tracer.Start(ctx, "GetLocationData")
	defer span.End()
	return f.geo.ResolveLocation(ctx, lon, lat)
}

func (f *Facade) GetAddressData(ctx context.Context, lon, lat float64) ([]geomodels.Address, error) {
	ctx, span := f.tracer.Start(ctx, "GetAddressData")
	defer span.End()
	return f.geo.ResolveAddress(ctx, lon, lat)
}

func (f *Facade) GetStatesByCountryCode(ctx context.Context, code string) ([]geomodels.State, error) {
	ctx, span := f.tracer.Start(ctx, "GetStatesByCountryCode")
	defer span.End()
	return f.geo.StatesByCountryCode(ctx, code)
}

func (f *Facade) GetStatesByCountryID(ctx context.Context, id int64) ([]geomodels.State, error) {
	ctx, span := f.tracer.Start(ctx, "GetStatesByCountryID")
	defer span.End()
	return f.geo.StatesByCountryID(ctx, id)
}

func (f *Facade) GetCitiesByState(ctx context.Context, countryID, stateID int64) ([]geomodels.City, error) {
	ctx, span := f.tracer.Start(ctx, "GetCitiesByState")
	defer span.End()
	return f.geo.CitiesByState(ctx, countryID, stateID)
}

func (f *Facade) GetUserDetails(ctx context.Context, userID int64) (*udmodels.UserDetails, error) {
	ctx, span := f.tracer.Start(ctx, "GetUserDetails", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()
	return f.userDetails.Get(ctx, userID)
}

func (f *Facade) CreateUserDetails(ctx context.Context, userID int64, in udmodels.Input) (*udmodels.UserDetails, error) {
	ctx, span := f.tracer.Start(ctx, "CreateUserDetails", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	if err := f.authorizeWrite(ctx, userID); err != nil {
		return nil, err
	}
	return f.userDetails.Create(ctx, userID, in)
}

func (f *Facade) UpdateUserDetails(ctx context.Context, userID int64, in udmodels.Input) (*udmodels.UserDetails, error) {
	ctx, span := f.tracer.Start(ctx, "UpdateUserDetails", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	if err := f.authorizeWrite(ctx, userID); err != nil {
		return nil, err
	}
	return f.userDetails.Update(ctx, userID, in)
}

func (f *Facade) InsertAuditLog(ctx context.Context, req auditservice.InsertRequest) (*auditmodels.Entry, error) {
	ctx, span := f.tracer.Start(ctx, "InsertAuditLog")
	defer span.End()
	return f.auditLog.Insert(ctx, req)
}

func (f *Facade) ListAuditLogs(ctx context.Context, params map[string]string) ([]auditmodels.Entry, error) {
	ctx, span := f.tracer.Start(ctx, "ListAuditLogs")
	defer span.End()
	return f.auditLog.List(ctx, params)
}

func (f *Facade) UpdateAuditLog(ctx context.Context, logID int64, comments string) (*auditmodels.Entry, error) {
	ctx, span := f.tracer.Start(ctx, "UpdateAuditLog", trace.WithAttributes(attribute.Int64("log.id", logID)))
	defer span.End()
	return f.auditLog.Update(ctx, logID, comments)
}

func (f *Facade) DeleteAuditLog(ctx context.Context, logID int64) error {
	ctx, span := f.tracer.Start(ctx, "DeleteAuditLog", trace.WithAttributes(attribute.Int64("log.id", logID)))
	defer span.End()
	return f.auditLog.Delete(ctx, logID)
}

// authorizeWrite rejects mutations that target a different user than the
// authenticated principal. The check runs before any store call so an
// unauthorized write can never reach persistence.
func (f *Facade) authorizeWrite(ctx context.Context, targetUserID int64) error {
	actor := requestcontext.UserID(ctx)
	if actor == 0 || actor != targetUserID {
		return domainerrors.NewKind(domainerrors.CodeForbidden, domainerrors.KindNotAuthorized,
			fmt.Sprintf("User %d is not allowed to modify user %d.", actor, targetUserID))
	}
	return nil
}
