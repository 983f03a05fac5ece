// Package permission is the authorization alphabet of the application: a
// closed set of permission names in domain:action form, the four role names,
// and the bitmask mapping between them. It contains no runtime policy; the
// session core's gate and UI routing consume it as a contract.
//
// Permissions are typed constants, so an unknown permission string is a
// compile-time error at the call site rather than a check that silently
// returns false. The registry is built and frozen at package init.
package permission
