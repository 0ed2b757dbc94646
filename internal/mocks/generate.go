package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/leagueseason --output domain/leagueseason --outpkg leagueseasonmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name WeekRepository --dir ../domain/sport --output domain/sport --outpkg sportmock --filename week_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name MemberRepository --dir ../domain/picksleague --output domain/picksleague --outpkg picksleaguemock --filename member_repository_mock.go
