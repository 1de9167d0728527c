package model

// PerfilUsuario is the closed set of roles. Authorization logic switches
// exhaustively over these values; adding a role without updating every
// permission check is a compile-time visible change.
type PerfilUsuario string

const (
	PerfilProfessor PerfilUsuario = "PROFESSOR"
	PerfilDiretor   PerfilUsuario = "DIRETOR"
	PerfilAdmin     PerfilUsuario = "ADMIN"
)

// Valido reports whether the value is one of the known roles.
func (p PerfilUsuario) Valido() bool {
	switch p {
	case PerfilProfessor, PerfilDiretor, PerfilAdmin:
		return true
	}
	return false
}

// Aprovador reports whether the role may approve reservations and plans.
func (p PerfilUsuario) Aprovador() bool {
	switch p {
	case PerfilDiretor, PerfilAdmin:
		return true
	case PerfilProfessor:
		return false
	}
	return false
}

// Principal is the authenticated caller injected by the JWT middleware.
// It is never persisted; the core only authorizes against it.
type Principal struct {
	ID     uint
	Perfil PerfilUsuario
}

// Usuario maps to the usuarios table.
type Usuario struct {
	ID        uint          `gorm:"primaryKey"                          json:"id"`
	Nome      string        `gorm:"type:varchar(100);not null"          json:"nome"`
	Email     string        `gorm:"type:varchar(255);not null;unique"   json:"email"`
	SenhaHash string        `gorm:"column:senha_hash;type:varchar(255);not null" json:"-"`
	Perfil    PerfilUsuario `gorm:"type:varchar(20);not null;default:'PROFESSOR'" json:"perfil"`
	Status    bool          `gorm:"not null;default:true"               json:"status"`
	VersionedModel
}

// TableName sets the table name.
func (Usuario) TableName() string { return "usuarios" }
