package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extendedColorLight = `{
	"state": {
		"on": true,
		"bri": 200,
		"hue": 8418,
		"sat": 140,
		"effect": "none",
		"xy": [0.4573, 0.41],
		"ct": 366,
		"alert": "select",
		"colormode": "ct",
		"mode": "homeautomation",
		"reachable": true
	},
	"swupdate": {"state": "noupdates", "lastinstall": "2023-03-13T10:43:46"},
	"type": "Extended color light",
	"name": "Lamp",
	"modelid": "LCT015",
	"manufacturername": "Signify Netherlands B.V.",
	"productname": "Hue color lamp",
	"capabilities": {
		"certified": true,
		"control": {
			"mindimlevel": 1000,
			"maxlumen": 806,
			"colorgamuttype": "C",
			"ct": {"min": 153, "max": 500}
		},
		"streaming": {"renderer": true, "proxy": true}
	},
	"config": {"archetype": "sultanbulb", "function": "mixed", "direction": "omnidirectional"},
	"uniqueid": "00:17:88:01:03:6c:e9:8d-0b",
	"swversion": "1.104.2"
}`

const onOffPlug = `{
	"state": {"on": false, "alert": "select", "mode": "homeautomation", "reachable": false},
	"swupdate": {"state": "notupdatable", "lastinstall": "2023-01-01T00:00:00"},
	"type": "On/Off plug-in unit",
	"name": "Plug",
	"modelid": "LOM001",
	"manufacturername": "Signify Netherlands B.V.",
	"productname": "Hue Smart plug",
	"capabilities": {"certified": true, "control": {}, "streaming": {"renderer": false, "proxy": false}},
	"config": {"archetype": "plug", "function": "functional", "direction": "omnidirectional"},
	"uniqueid": "00:17:88:01:08:0a:1b:2c-0b",
	"swversion": "1.93.6"
}`

func TestLightDecode_ExtendedColor(t *testing.T) {
	var light Light
	require.NoError(t, json.Unmarshal([]byte(extendedColorLight), &light))

	assert.Equal(t, "Lamp", light.Name)
	assert.Equal(t, "Extended color light", light.Type)
	assert.Equal(t, "LCT015", light.ModelID)
	assert.True(t, light.State.On)
	require.NotNil(t, light.State.Bri)
	assert.Equal(t, uint8(200), *light.State.Bri)
	require.NotNil(t, light.State.CT)
	assert.Equal(t, uint16(366), *light.State.CT)
	assert.Equal(t, []float64{0.4573, 0.41}, light.State.XY)
	assert.Equal(t, "ct", light.State.ColorMode)
	require.NotNil(t, light.Capabilities.Control.CT)
	assert.Equal(t, CTRange{Min: 153, Max: 500}, *light.Capabilities.Control.CT)
	assert.Equal(t, "sultanbulb", light.Config.Archetype)
	assert.Equal(t, "noupdates", light.SoftwareUpdate.State)
}

func TestLightDecode_OptionalFieldsAbsent(t *testing.T) {
	var light Light
	require.NoError(t, json.Unmarshal([]byte(onOffPlug), &light))

	assert.Nil(t, light.State.Bri)
	assert.Nil(t, light.State.Hue)
	assert.Nil(t, light.State.Sat)
	assert.Nil(t, light.State.CT)
	assert.Empty(t, light.State.ColorMode)
	assert.Nil(t, light.Capabilities.Control.CT)
	assert.Nil(t, light.State.Color())
	assert.Equal(t, 0, light.State.BrightnessPct())
}

func TestLightState_Color(t *testing.T) {
	bri := uint8(254)
	hue := uint16(0)
	sat := uint8(254)
	ct := uint16(250)

	tests := []struct {
		name  string
		state LightState
		want  ColorMode
	}{
		{"hs", LightState{Bri: &bri, Hue: &hue, Sat: &sat, ColorMode: "hs"}, ColorModeHS},
		{"xy", LightState{Bri: &bri, XY: []float64{0.3, 0.3}, ColorMode: "xy"}, ColorModeXY},
		{"ct", LightState{Bri: &bri, CT: &ct, ColorMode: "ct"}, ColorModeColorTemp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.state.Color()
			require.NotNil(t, c)
			assert.Equal(t, tt.want, c.Mode)
		})
	}

	t.Run("mode without values", func(t *testing.T) {
		state := LightState{ColorMode: "hs", Hue: &hue}
		assert.Nil(t, state.Color())
	})
}

func TestLightState_BrightnessPct(t *testing.T) {
	tests := []struct {
		bri  uint8
		want int
	}{
		{1, 0},
		{127, 50},
		{254, 100},
	}

	for _, tt := range tests {
		bri := tt.bri
		state := LightState{Bri: &bri}
		assert.Equal(t, tt.want, state.BrightnessPct())
	}
}

func TestLightString(t *testing.T) {
	var light Light
	require.NoError(t, json.Unmarshal([]byte(extendedColorLight), &light))

	out := light.String()

	for _, want := range []string{
		"Name: Lamp\n",
		"Model id: LCT015\n",
		"Software update:\nState: noupdates\n",
		"Config:\nArchetype: sultanbulb\n",
		"Color temperature min: 153, max: 500\n",
		"--- Light state: ---\nOn: true\nBrightness: 200\n",
		"Color temperature: 366\n",
		"Colormode: ct\n",
		"Reachable: true\n",
	} {
		assert.Contains(t, out, want)
	}
}

func TestLightStateString_SkipsAbsentFields(t *testing.T) {
	var light Light
	require.NoError(t, json.Unmarshal([]byte(onOffPlug), &light))

	out := light.State.String()

	assert.Equal(t, "On: false\nAlert: select\nMode: homeautomation\nReachable: false\n", out)
	assert.NotContains(t, light.Capabilities.String(), "Control capabilities")
}
