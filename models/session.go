package models

// Role, oturumun kimlik türü. Boş string "oturum yok" demektir.
type Role string

const (
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
)

// Session, local olarak persist edilen oturum bilgisi.
//
// Role ve Email her zaman birlikte yaşar: login ikisini birlikte set eder,
// logout ikisini birlikte temizler — yarım oturum olmaz.
//
// AccessToken backend'in verdiği opak bearer token'dır; varsa API
// isteklerine Authorization header olarak eklenir. Token üretimi ve
// doğrulaması tamamen backend'e aittir — client içeriğine bakmaz.
type Session struct {
	Role        Role   `json:"role"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token,omitempty"`
}

// LoggedIn, oturumun dolu olup olmadığını döner.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Role != "" && s.Email != ""
}

// IsSeller, oturumun admin (SELLER) yetkisinde olup olmadığını döner.
// Admin sipariş listesi ve status güncelleme bu role bağlıdır;
// asıl yetki kontrolü yine backend'dedir — client sadece UI akışını yönetir.
func (s *Session) IsSeller() bool {
	return s != nil && s.Role == RoleSeller
}
