package repository

//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./organization.go -destination=../mocks/mock_organization_repository.go -package=mocks OrganizationRepositoryIface
//go:generate mockgen -source=./contact.go -destination=../mocks/mock_contact_repository.go -package=mocks ContactRepositoryIface
//go:generate mockgen -source=./session.go -destination=../mocks/mock_session_repository.go -package=mocks SessionRepositoryIface
