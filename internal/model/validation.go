package model

import (
	"retail-mis-console/pkg/validator"
)

// RoleTag is the struct tag that accepts canonical role codes only
const RoleTag = "mis_role"

func init() {
	if err := validator.RegisterStringRule(RoleTag, func(s string) bool { return Role(s).Valid() }); err != nil {
		panic(err)
	}
}
