// Package rbac implementa la tabla estática rol → permisos. Sin reglas
// dinámicas ni scoping por instancia: puramente rol-a-verbo.
package rbac

import "github.com/tejidosandina/rollos-api/internal/domain/entity"

// Wildcard otorga todos los permisos (solo admin).
const Wildcard = "*"

// Permisos conocidos.
const (
	PermRollsRead      = "rolls:read"
	PermRollsCreate    = "rolls:create"
	PermRollsUpdate    = "rolls:update"
	PermRollsDelete    = "rolls:delete"
	PermCatalogsRead   = "catalogs:read"
	PermCatalogsCreate = "catalogs:create"
	PermCatalogsUpdate = "catalogs:update"
	PermCatalogsDelete = "catalogs:delete"
	PermUsersManage    = "users:manage"
	PermAuditRead      = "audit:read"
)

// rolePermissions es la tabla estática. No se modifica en runtime.
var rolePermissions = map[string]map[string]struct{}{
	entity.RoleAdmin: {
		Wildcard: {},
	},
	entity.RoleStorekeeper: {
		PermRollsRead:      {},
		PermRollsCreate:    {},
		PermRollsUpdate:    {},
		PermRollsDelete:    {},
		PermCatalogsRead:   {},
		PermCatalogsCreate: {},
		PermCatalogsUpdate: {},
	},
	entity.RoleViewer: {
		PermRollsRead:    {},
		PermCatalogsRead: {},
	},
}

// HasPermission indica si el rol contiene el permiso exacto o el wildcard.
// Roles desconocidos no tienen ningún permiso.
func HasPermission(role, permission string) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	if _, ok := perms[Wildcard]; ok {
		return true
	}
	_, ok = perms[permission]
	return ok
}

// HasAny indica si el rol tiene al menos uno de los permisos.
func HasAny(role string, permissions ...string) bool {
	for _, p := range permissions {
		if HasPermission(role, p) {
			return true
		}
	}
	return false
}

// HasAll indica si el rol tiene todos los permisos.
func HasAll(role string, permissions ...string) bool {
	for _, p := range permissions {
		if !HasPermission(role, p) {
			return false
		}
	}
	return true
}

// ValidRole indica si el rol existe en la tabla.
func ValidRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}
