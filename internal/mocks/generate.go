package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/matchlog --output domain/matchlog --outpkg matchlogmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/videoanalysis --output domain/videoanalysis --outpkg videoanalysismock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/leaguetable --output domain/leaguetable --outpkg leaguetablemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/analysisjob --output domain/analysisjob --outpkg analysisjobmock --filename repository_mock.go
