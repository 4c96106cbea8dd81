package edu

import (
	"time"

	"edu-platform/biz/infrastructure/repository/user"
)

type RegisterReq struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type User struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Role         string             `json:"role"`
	Avatar       string             `json:"avatar"`
	Courses      []string           `json:"courses"`
	Achievements []user.Achievement `json:"achievements"`
	Points       int64              `json:"points"`
	Progress     []user.Progress    `json:"progress"`
	CreateTime   time.Time          `json:"createTime"`
}

type AuthResp struct {
	Token  string `json:"token"`
	Expire int64  `json:"expire"`
	User   *User  `json:"user"`
}
