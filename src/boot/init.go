package boot

import (
	"log"
	"shareit/src/config"
	"shareit/src/db"
	"shareit/src/models"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.ItemRequest{},
		&models.Item{},
		&models.Booking{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// shareDateValidatorFunc accepts timestamps in the wire format only.
// Range rules (ordering, future-only) belong to the booking service so
// they surface as time-range errors, not binding failures.
var shareDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	raw, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(config.TIME_PARSE_FORMAT, raw)
	return err == nil
}

func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("sharedate", shareDateValidatorFunc)
	}
}
