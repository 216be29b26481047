package binder

import "reflect"

func intType() reflect.Type {
	return reflect.TypeOf(0)
}
