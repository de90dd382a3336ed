package store

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks battwatch.xyz/battery-health-service/pkg/store Store
