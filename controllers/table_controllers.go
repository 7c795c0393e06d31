package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type TableController struct {
	Service *services.TableService
}

func NewTableController(service *services.TableService) *TableController {
	return &TableController{Service: service}
}

func tableID(c *gin.Context) (uint, bool) {
	id, ok := pathID(c, "table_id")
	if !ok {
		utils.RespondFailure(c, utils.NotFound(fmt.Sprintf("table number %s does not exist", c.Param("table_id"))))
	}
	return id, ok
}

// GetAllTables -> tables ordered by name
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Service.List(c.Request.Context())
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, tables)
}

func (tc *TableController) CreateTable(c *gin.Context) {
	data, err := readData(c)
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	table, err := tc.Service.Create(c.Request.Context(), tableInput(data))
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, table)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	table, err := tc.Service.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, table)
}

// SeatTable -> PUT /tables/:table_id/seat {"data": {"reservation_id": ...}}
func (tc *TableController) SeatTable(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	data, err := readData(c)
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	table, err := tc.Service.Seat(c.Request.Context(), id, idField(data, "reservation_id"))
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, table)
}

// FinishTable -> DELETE /tables/:table_id/seat
func (tc *TableController) FinishTable(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	table, err := tc.Service.Finish(c.Request.Context(), id)
	if err != nil {
		utils.RespondFailure(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, table)
}
