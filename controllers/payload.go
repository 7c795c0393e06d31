package controllers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validators"
)

// readData returns the "data" object of a {"data": {...}} request body. An
// empty body yields an empty result so the validators report missing fields.
func readData(c *gin.Context) (gjson.Result, error) {
	body, err := c.GetRawData()
	if err != nil {
		return gjson.Result{}, utils.BadRequest("could not read request body")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return gjson.Result{}, nil
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, utils.BadRequest("request body is not valid JSON")
	}
	return gjson.GetBytes(body, "data"), nil
}

func stringField(data gjson.Result, name string) string {
	field := data.Get(name)
	if !field.Exists() || field.Type == gjson.Null {
		return ""
	}
	return field.String()
}

// numberField reads a JSON number. Strings and fractions are present but not
// numeric.
func numberField(data gjson.Result, name string) validators.Number {
	field := data.Get(name)
	switch {
	case !field.Exists() || field.Type == gjson.Null:
		return validators.Number{}
	case field.Type == gjson.Number && field.Num == math.Trunc(field.Num):
		return validators.Number{Value: int(field.Num), Present: true, Numeric: true}
	default:
		return validators.Number{Present: true}
	}
}

// idField is numberField that also accepts numeric strings, since form
// selects post the reservation id as text.
func idField(data gjson.Result, name string) validators.Number {
	field := data.Get(name)
	if field.Type == gjson.String {
		s := strings.TrimSpace(field.Str)
		if s == "" {
			return validators.Number{}
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return validators.Number{Present: true}
		}
		return validators.Number{Value: v, Present: true, Numeric: true}
	}
	return numberField(data, name)
}

func reservationInput(data gjson.Result) validators.ReservationInput {
	return validators.ReservationInput{
		FirstName:       stringField(data, "first_name"),
		LastName:        stringField(data, "last_name"),
		MobileNumber:    stringField(data, "mobile_number"),
		ReservationDate: stringField(data, "reservation_date"),
		ReservationTime: stringField(data, "reservation_time"),
		People:          numberField(data, "people"),
		Status:          stringField(data, "status"),
		Note:            stringField(data, "note"),
	}
}

func tableInput(data gjson.Result) validators.TableInput {
	return validators.TableInput{
		TableName: stringField(data, "table_name"),
		Capacity:  numberField(data, "capacity"),
	}
}

// pathID parses a numeric route parameter. ok is false for anything that
// cannot be a row id.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
