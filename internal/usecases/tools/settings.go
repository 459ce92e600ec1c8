package tools

import (
	"github.com/architeacher/storetools/internal/usecases/keyspaces"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/architeacher/storetools/internal/ports"
	"github.com/architeacher/storetools/internal/usecases/commands"
	"github.com/architeacher/storetools/pkg/validation"
)

const settingIDPattern = `^[a-z0-9_\-]+$`

type (
	SettingGroupRequest struct {
		Group string `mapstructure:"group" validate:"required"`
	}

	SettingRequest struct {
		Group string `mapstructure:"group" validate:"required"`
		ID    string `mapstructure:"id" validate:"required"`
	}

	UpdateSettingRequest struct {
		Group string `mapstructure:"group" validate:"required"`
		ID    string `mapstructure:"id" validate:"required"`
		Value any    `mapstructure:"value"`
	}

	SettingValue struct {
		ID    string `mapstructure:"id" json:"id" validate:"required"`
		Value any    `mapstructure:"value" json:"value"`
	}

	BatchUpdateSettingsRequest struct {
		Group  string         `mapstructure:"group" validate:"required"`
		Update []SettingValue `mapstructure:"update" validate:"required,min=1,dive"`
	}
)

func settingName(description string) validation.Constraint {
	c := str(description)
	c.Pattern = settingIDPattern

	return c
}

func (b builder) settingTools() []Tool {
	group := required(settingName("Settings group id, e.g. general or products."))
	id := required(settingName("Setting id."))

	return []Tool{
		{
			Name:        "list_setting_groups",
			Description: "List the settings groups of the store.",
			Group:       GroupCommerce,
			Schema:      validation.Schema{},
			Handler: func(ctx context.Context, _ map[string]any) (json.RawMessage, error) {
				return b.read(ctx, "list_setting_groups", ports.UpstreamCommerce, "settings", nil, keyspaces.Settings.Item("groups"), b.app.TTL.Settings)
			},
		},
		{
			Name:        "get_setting_group",
			Description: "Get every setting of a settings group.",
			Group:       GroupCommerce,
			Schema:      validation.Schema{"group": group},
			Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
				req, err := validation.Bind[SettingGroupRequest](args)
				if err != nil {
					return nil, err
				}

				return b.read(ctx, "get_setting_group", ports.UpstreamCommerce, "settings/"+req.Group, nil,
					keyspaces.Settings.Item("group", req.Group), b.app.TTL.Settings)
			},
		},
		{
			Name:        "get_setting",
			Description: "Get one setting of a settings group.",
			Group:       GroupCommerce,
			Schema:      validation.Schema{"group": group, "id": id},
			Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
				req, err := validation.Bind[SettingRequest](args)
				if err != nil {
					return nil, err
				}

				return b.read(ctx, "get_setting", ports.UpstreamCommerce, fmt.Sprintf("settings/%s/%s", req.Group, req.ID), nil,
					keyspaces.Settings.Item("setting", req.Group, req.ID), b.app.TTL.Settings)
			},
		},
		{
			Name:        "update_setting",
			Description: "Change the value of one setting.",
			Group:       GroupCommerce,
			Schema:      validation.Schema{"group": group, "id": id, "value": required(anyValue("New value."))},
			Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
				req, err := validation.Bind[UpdateSettingRequest](args)
				if err != nil {
					return nil, err
				}

				return b.write(ctx, commands.WriteUpstreamCommand{
					Tool:     "update_setting",
					Upstream: ports.UpstreamCommerce,
					Method:   http.MethodPut,
					Path:     fmt.Sprintf("settings/%s/%s", req.Group, req.ID),
					Body:     map[string]any{"value": req.Value},
					Invalidate: []string{
						keyspaces.Settings.Item("setting", req.Group, req.ID),
						keyspaces.Settings.Item("group", req.Group),
					},
				})
			},
		},
		{
			Name:        "batch_update_settings",
			Description: "Change several settings of one group in a single request.",
			Group:       GroupCommerce,
			Schema: validation.Schema{
				"group": group,
				"update": required(arrayOf("Settings to change.", objectOf("Setting.", validation.Schema{
					"id":    id,
					"value": required(anyValue("New value.")),
				}))),
			},
			Handler: func(ctx context.Context, args map[string]any) (json.RawMessage, error) {
				req, err := validation.Bind[BatchUpdateSettingsRequest](args)
				if err != nil {
					return nil, err
				}

				return b.write(ctx, commands.WriteUpstreamCommand{
					Tool:       "batch_update_settings",
					Upstream:   ports.UpstreamCommerce,
					Method:     http.MethodPost,
					Path:       fmt.Sprintf("settings/%s/batch", req.Group),
					Body:       map[string]any{"update": req.Update},
					Invalidate: []string{keyspaces.Settings.Pattern()},
				})
			},
		},
	}
}
