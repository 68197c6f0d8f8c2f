package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password    string `json:"-"`
	Role        string `json:"role" gorm:"type:varchar(20);default:'user'"` // user, admin
	SocietyName string `json:"societyName" gorm:"size:255"`
	Area        string `json:"area" gorm:"size:128"`
}
