package transport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neexbeast/dokoiko/internal/destination"
	"github.com/neexbeast/dokoiko/internal/transport"
)

func defaultRules() transport.ProviderRules {
	return transport.DefaultProviderRules(destination.DefaultDepartures())
}

func TestResolve(t *testing.T) {
	rules := defaultRules()

	tests := []struct {
		name      string
		departure string
		gateway   string
		tag       string
		want      transport.ProviderID
		wantOK    bool
	}{
		{"east region", "仙台", "盛岡駅", "jr", transport.ProviderEkinet, true},
		{"west region", "金沢", "富山駅", "jr", transport.ProviderE5489, true},
		{"kyushu region", "熊本", "鹿児島中央駅", "jr", transport.ProviderJRKyushu, true},
		{"corridor overrides west", "大阪", "東京駅", "jr", transport.ProviderSmartEX, true},
		{"corridor overrides east", "東京", "新大阪駅", "jr", transport.ProviderSmartEX, true},
		{"corridor overrides kyushu", "福岡", "広島駅", "e5489", transport.ProviderSmartEX, true},
		{"corridor needs both ends", "東京", "富山駅", "jr", transport.ProviderEkinet, true},
		{"corridor departure only", "仙台", "名古屋駅", "jr", transport.ProviderEkinet, true},
		{"gateway whitespace", "京都", " 博多駅 ", "jr", transport.ProviderSmartEX, true},
		{"tag case", "金沢", "富山駅", " JR ", transport.ProviderE5489, true},
		{"unknown departure falls back", "どこか", "松本駅", "jr", transport.ProviderE5489, true},
		{"unmapped tag", "東京", "新大阪駅", "private", "", false},
		{"empty tag", "東京", "新大阪駅", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := rules.Resolve(tc.departure, tc.gateway, tc.tag)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	rules := defaultRules()
	first, _ := rules.Resolve("名古屋", "京都駅", "jr")
	for range 100 {
		got, ok := rules.Resolve("名古屋", "京都駅", "jr")
		assert.True(t, ok)
		assert.Equal(t, first, got)
	}
}

func TestResolve_CustomTable(t *testing.T) {
	departures := destination.NewDepartureTable([]destination.Departure{
		{Name: "CityA", Region: destination.RegionWest},
		{Name: "CityC", Region: destination.RegionEast},
	})
	rules := transport.ProviderRules{
		Departures: departures,
		Regional: map[destination.Region]transport.ProviderID{
			destination.RegionEast: "provider-a",
			destination.RegionWest: "provider-b",
		},
		Fallback: "provider-b",
		Corridors: []transport.Corridor{
			{Name: "express", Departures: []string{"CityA"}, Gateways: []string{"CityB"}, Provider: "express"},
		},
		Tags: []string{"rail"},
	}

	got, ok := rules.Resolve("CityA", "CityB", "rail")
	assert.True(t, ok)
	assert.Equal(t, transport.ProviderID("express"), got)

	got, _ = rules.Resolve("CityA", "CityD", "rail")
	assert.Equal(t, transport.ProviderID("provider-b"), got)

	got, _ = rules.Resolve("CityC", "CityB", "rail")
	assert.Equal(t, transport.ProviderID("provider-a"), got)
}
