package controllers

import (
	"github.com/shashiranjanraj/storehub/app/services"
	"github.com/shashiranjanraj/storehub/pkg/ctx"
)

// StoreController serves the store owner's own settings.
type StoreController struct {
	base
	stores *services.StoreService
}

func NewStoreController(s *Services) *StoreController {
	return &StoreController{base: newBase(s), stores: s.Stores}
}

// UpdateSettings PUT /api/store/settings
func (c *StoreController) UpdateSettings(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	var in services.SettingsInput
	if !x.BindJSON(&in) {
		return
	}
	store, err := c.stores.UpdateSettings(x.Context(), caller, in)
	if err != nil {
		x.Fail(err)
		return
	}
	x.Success(store)
}
