package entities

// MovieCast assigns an actor to a role in a movie. The pair
// (MovieID, ActorName) is unique.
type MovieCast struct {
	MovieID         int    `json:"movieId" dynamodbav:"movieId" validate:"gte=0"`
	ActorName       string `json:"actorName" dynamodbav:"actorName" validate:"required"`
	RoleName        string `json:"roleName" dynamodbav:"roleName" validate:"required"`
	RoleDescription string `json:"roleDescription,omitempty" dynamodbav:"roleDescription,omitempty"`
}
