package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/staging --output domain/staging --outpkg stagingmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Writer --dir ../domain/staging --output domain/staging --outpkg stagingmock --filename writer_mock.go
