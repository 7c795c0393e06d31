package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-reservations/reports"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(service *services.ReservationService) *ReservationController {
	return &ReservationController{Service: service}
}

func reservationID(c *gin.Context) (uint, bool) {
	id, ok := pathID(c, "reservation_id")
	if !ok {
		utils.RespondFailure(c, utils.NotFound(fmt.Sprintf("Reservation number %s does not exist", c.Param("reservation_id"))))
	}
	return id, ok
}

// ListReservations -> GET /reservations?date= or ?mobile_number=
func (rc *ReservationController) ListReservations(c *gin.Context) {
	filter := services.ListFilter{
		Date:         c.Query("date"),
		MobileNumber: c.Query("mobile_number"),
	}
	reservations, err := rc.Service.List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, reservations)
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	data, err := readData(c)
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	reservation, err := rc.Service.Create(c.Request.Context(), reservationInput(data))
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, reservation)
}

func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	reservation, err := rc.Service.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, reservation)
}

func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	data, err := readData(c)
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	reservation, err := rc.Service.Update(c.Request.Context(), id, reservationInput(data))
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, reservation)
}

// UpdateStatus -> PUT /reservations/:reservation_id/status {"data": {"status": ...}}
func (rc *ReservationController) UpdateStatus(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	data, err := readData(c)
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	reservation, err := rc.Service.UpdateStatus(c.Request.Context(), id, stringField(data, "status"))
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, reservation)
}

func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	if err := rc.Service.Delete(c.Request.Context(), id); err != nil {
		utils.RespondFailure(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportReservations -> GET /reservations/export?date=YYYY-MM-DD&format=pdf|csv
func (rc *ReservationController) ExportReservations(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondFailure(c, utils.BadRequest("Required field: date is missing"))
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.RespondFailure(c, utils.BadRequest("date does not match the pattern"))
		return
	}

	reservations, err := rc.Service.List(c.Request.Context(), services.ListFilter{Date: date})
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}

	format := c.DefaultQuery("format", "pdf")
	filename := fmt.Sprintf("reservations-%s.%s", date, format)
	switch format {
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", "attachment; filename="+filename)
		err = reports.WriteCSV(c.Writer, reservations)
	case "pdf":
		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", "attachment; filename="+filename)
		err = reports.WritePDF(c.Writer, date, reservations)
	default:
		utils.RespondFailure(c, utils.BadRequest(fmt.Sprintf("format %s is not supported", format)))
		return
	}
	if err != nil {
		utils.ErrorLogger.Errorf("export %s for %s failed: %v", format, date, err)
		return
	}
	utils.InfoLogger.Infof("exported %d reservations for %s as %s", len(reservations), date, format)
}
