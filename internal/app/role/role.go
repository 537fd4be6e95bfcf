package role

type Role int

const (
	Viewer Role = iota // только чтение
	Sales              // чтение и изменение записей
	Admin              // всё, включая журнал аудита и удаление каталога
)

// Parse переводит строковое имя роли из запроса, по умолчанию Viewer
func Parse(s string) Role {
	switch s {
	case "sales":
		return Sales
	case "admin":
		return Admin
	}
	return Viewer
}

func (r Role) String() string {
	switch r {
	case Sales:
		return "sales"
	case Admin:
		return "admin"
	}
	return "viewer"
}
