package i18n

type catalog map[string]string

var catalogFR = catalog{
	// Auth
	"auth.login.failed":        "Email ou mot de passe incorrect",
	"auth.account.suspended":   "Votre compte est suspendu",
	"auth.email.invalid":       "Adresse email invalide",
	"auth.email.taken":         "Cette adresse email est déjà utilisée",
	"auth.password.short":      "Le mot de passe doit contenir au moins 8 caractères",
	"auth.session.expired":     "Session expirée, veuillez vous reconnecter",
	"auth.login.required":      "Connectez-vous pour continuer",
	"auth.forbidden":           "Vous n'avez pas accès à cette page",

	// Roles
	"role.buyer":          "Acheteur",
	"role.seller":         "Vendeur",
	"role.driver":         "Livreur",
	"role.switch.denied":  "Vous n'avez pas ce rôle",
	"role.unknown":        "Rôle inconnu",
	"role.enrolled":       "Nouveau rôle ajouté",

	// Availability
	"availability.online":        "En ligne",
	"availability.offline":       "Hors ligne",
	"availability.busy":          "Occupé",
	"availability.workers.only":  "La disponibilité concerne les vendeurs et livreurs",

	// Escrow labels
	"escrow.awaiting_payment": "En attente de paiement",
	"escrow.held":             "Paiement sécurisé",
	"escrow.delivered":        "Livré",
	"escrow.released":         "Paiement versé",

	// Requests
	"request.created":       "Demande de livraison publiée",
	"request.not_found":     "Demande introuvable",
	"request.not_open":      "Cette demande n'est plus disponible",
	"request.accepted":      "Course acceptée",
	"request.locked":        "Connectez-vous pour voir les coordonnées",

	// Promo
	"promo.night.banner": "Bonus de nuit : livraisons majorées de 20h à 6h !",
	"promo.night.off":    "Aucune promotion en cours",

	// Preferences
	"prefs.saved":         "Préférences enregistrées",
	"prefs.lang.invalid":  "Langue non prise en charge",
	"prefs.theme.invalid": "Thème non pris en charge",

	// Common
	"common.error":   "Une erreur est survenue",
	"common.success": "Succès",
}

var catalogAR = catalog{
	// Auth
	"auth.login.failed":      "البريد الإلكتروني أو كلمة المرور غير صحيحة",
	"auth.account.suspended": "تم تعليق حسابك",
	"auth.email.invalid":     "البريد الإلكتروني غير صالح",
	"auth.email.taken":       "هذا البريد الإلكتروني مستعمل من قبل",
	"auth.password.short":    "يجب أن تحتوي كلمة المرور على 8 أحرف على الأقل",
	"auth.session.expired":   "انتهت الجلسة، يرجى تسجيل الدخول مجددا",
	"auth.login.required":    "سجّل الدخول للمتابعة",
	"auth.forbidden":         "لا يمكنك الوصول إلى هذه الصفحة",

	// Roles
	"role.buyer":         "مشتري",
	"role.seller":        "بائع",
	"role.driver":        "موصّل",
	"role.switch.denied": "ليس لديك هذا الدور",
	"role.unknown":       "دور غير معروف",
	"role.enrolled":      "تمت إضافة دور جديد",

	// Availability
	"availability.online":       "متصل",
	"availability.offline":      "غير متصل",
	"availability.busy":         "مشغول",
	"availability.workers.only": "حالة التوفر خاصة بالبائعين والموصّلين",

	// Escrow labels
	"escrow.awaiting_payment": "في انتظار الدفع",
	"escrow.held":             "الدفع محجوز",
	"escrow.delivered":        "تم التوصيل",
	"escrow.released":         "تم تحويل المبلغ",

	// Requests
	"request.created":   "تم نشر طلب التوصيل",
	"request.not_found": "الطلب غير موجود",
	"request.not_open":  "هذا الطلب لم يعد متاحا",
	"request.accepted":  "تم قبول التوصيلة",
	"request.locked":    "سجّل الدخول لرؤية معلومات الاتصال",

	// Promo
	"promo.night.banner": "مكافأة الليل: توصيلات بأسعار أعلى من 20:00 إلى 06:00!",
	"promo.night.off":    "لا توجد عروض حاليا",

	// Preferences
	"prefs.saved":         "تم حفظ التفضيلات",
	"prefs.lang.invalid":  "اللغة غير مدعومة",
	"prefs.theme.invalid": "المظهر غير مدعوم",

	// Common
	"common.error":   "حدث خطأ ما",
	"common.success": "تم بنجاح",
}
