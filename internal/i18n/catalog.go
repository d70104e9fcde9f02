package i18n

var english = map[Key]string{
	ErrInvalidRequest:     "Invalid request body",
	ErrValidation:         "Some fields are missing or invalid",
	ErrDuplicateEmail:     "User with this email already exists",
	ErrInvalidCredentials: "Invalid email or password",
	ErrUnauthenticated:    "Authentication required",
	ErrInvalidToken:       "Invalid or expired token",
	ErrForbidden:          "You are not allowed to do this",
	ErrAdminRequired:      "Admin access required",
	ErrEventNotFound:      "Event not found",
	ErrUserNotFound:       "User not found",
	ErrLocaleNotFound:     "Unsupported language",
	ErrInvalidStatus:      "Status must be either approved or rejected",
	ErrInvalidTransition:  "This event has already been moderated",
	ErrSubscriberRequired: "Name and WhatsApp number are required",
	ErrEndBeforeStart:     "End date must not be before start date",
	ErrInvalidEventID:     "Invalid event id",
	ErrNotOwner:           "Only the organizer of this event can do this",
	ErrRateLimited:        "Too many requests, please try again later",
	ErrUploadsDisabled:    "Image uploads are not available",
	ErrInvalidUpload:      "Unsupported or oversized image",
	ErrInternal:           "Something went wrong, please try again later",

	CommonHome:      "Home",
	CommonAbout:     "About",
	CommonLogin:     "Login",
	CommonRegister:  "Register",
	CommonDashboard: "Dashboard",
	CommonSearch:    "Search",
	CommonSortBy:    "Sort By",
	CommonCity:      "City",
	CommonNewest:    "Newest",
	CommonUpcoming:  "Upcoming",
	CommonPopular:   "Most popular",
	CommonAll:       "All",
	CommonDays:      "Days",
	CommonHours:     "Hours",
	CommonMinutes:   "Minutes",
	CommonSeconds:   "Seconds",
	CommonLogout:    "Logout",

	HomeTitle:       "Discover Morocco's Upcoming Events",
	HomeSubtitle:    "Your Ultimate Countdown to Moroccan Cultural Experiences",
	HomeNoEvents:    "No events found",
	HomeSearchHint:  "Search events...",
	HomeCityFilter:  "Filter by city",
	HomeUpcomingTtl: "Upcoming Events",

	EventStartDate: "Start Date",
	EventEndDate:   "End Date",
	EventLocation:  "Location",
	EventOrganizer: "Organizer",
	EventCategory:  "Category",
	EventRegister:  "Register for this event",
	EventShare:     "Share this event",
	EventJoined:    "joined",

	DashboardMyEvents:    "My Events",
	DashboardCreateEvent: "Create Event",
	DashboardPending:     "Pending Approval",
	DashboardApproved:    "Approved",
	DashboardRejected:    "Rejected",
	DashboardSubscribers: "Subscribers",
}

var french = map[Key]string{
	ErrInvalidRequest:     "Corps de requête invalide",
	ErrValidation:         "Certains champs sont manquants ou invalides",
	ErrDuplicateEmail:     "Un utilisateur avec cet email existe déjà",
	ErrInvalidCredentials: "Email ou mot de passe invalide",
	ErrUnauthenticated:    "Authentification requise",
	ErrInvalidToken:       "Jeton invalide ou expiré",
	ErrForbidden:          "Vous n'êtes pas autorisé à effectuer cette action",
	ErrAdminRequired:      "Accès administrateur requis",
	ErrEventNotFound:      "Événement introuvable",
	ErrUserNotFound:       "Utilisateur introuvable",
	ErrLocaleNotFound:     "Langue non prise en charge",
	ErrInvalidStatus:      "Le statut doit être approuvé ou rejeté",
	ErrInvalidTransition:  "Cet événement a déjà été modéré",
	ErrSubscriberRequired: "Le nom et le numéro WhatsApp sont requis",
	ErrEndBeforeStart:     "La date de fin ne peut pas précéder la date de début",
	ErrInvalidEventID:     "Identifiant d'événement invalide",
	ErrNotOwner:           "Seul l'organisateur de cet événement peut faire cela",
	ErrRateLimited:        "Trop de requêtes, veuillez réessayer plus tard",
	ErrUploadsDisabled:    "Le téléversement d'images n'est pas disponible",
	ErrInvalidUpload:      "Image non prise en charge ou trop volumineuse",
	ErrInternal:           "Une erreur est survenue, veuillez réessayer plus tard",

	CommonHome:      "Accueil",
	CommonAbout:     "À propos",
	CommonLogin:     "Connexion",
	CommonRegister:  "Inscription",
	CommonDashboard: "Tableau de bord",
	CommonSearch:    "Rechercher",
	CommonSortBy:    "Trier par",
	CommonCity:      "Ville",
	CommonNewest:    "Plus récent",
	CommonUpcoming:  "À venir",
	CommonPopular:   "Les plus populaires",
	CommonAll:       "Tout",
	CommonDays:      "Jours",
	CommonHours:     "Heures",
	CommonMinutes:   "Minutes",
	CommonSeconds:   "Secondes",
	CommonLogout:    "Déconnexion",

	HomeTitle:       "Découvrez les Prochains Événements au Maroc",
	HomeSubtitle:    "Votre Compte à Rebours Ultime pour les Expériences Culturelles Marocaines",
	HomeNoEvents:    "Aucun événement trouvé",
	HomeSearchHint:  "Rechercher des événements...",
	HomeCityFilter:  "Filtrer par ville",
	HomeUpcomingTtl: "Événements à Venir",

	EventStartDate: "Date de début",
	EventEndDate:   "Date de fin",
	EventLocation:  "Emplacement",
	EventOrganizer: "Organisateur",
	EventCategory:  "Catégorie",
	EventRegister:  "S'inscrire à cet événement",
	EventShare:     "Partager cet événement",
	EventJoined:    "inscrits",

	DashboardMyEvents:    "Mes Événements",
	DashboardCreateEvent: "Créer un Événement",
	DashboardPending:     "En Attente d'Approbation",
	DashboardApproved:    "Approuvé",
	DashboardRejected:    "Rejeté",
	DashboardSubscribers: "Abonnés",
}

var arabic = map[Key]string{
	ErrInvalidRequest:     "نص الطلب غير صالح",
	ErrValidation:         "بعض الحقول مفقودة أو غير صالحة",
	ErrDuplicateEmail:     "يوجد مستخدم بهذا البريد الإلكتروني بالفعل",
	ErrInvalidCredentials: "البريد الإلكتروني أو كلمة المرور غير صحيحة",
	ErrUnauthenticated:    "يجب تسجيل الدخول",
	ErrInvalidToken:       "رمز غير صالح أو منتهي الصلاحية",
	ErrForbidden:          "غير مسموح لك بالقيام بذلك",
	ErrAdminRequired:      "يتطلب صلاحيات المسؤول",
	ErrEventNotFound:      "الفعالية غير موجودة",
	ErrUserNotFound:       "المستخدم غير موجود",
	ErrLocaleNotFound:     "اللغة غير مدعومة",
	ErrInvalidStatus:      "يجب أن تكون الحالة معتمدة أو مرفوضة",
	ErrInvalidTransition:  "تمت مراجعة هذه الفعالية بالفعل",
	ErrSubscriberRequired: "الاسم ورقم واتساب مطلوبان",
	ErrEndBeforeStart:     "لا يمكن أن يسبق تاريخ الانتهاء تاريخ البدء",
	ErrInvalidEventID:     "معرف الفعالية غير صالح",
	ErrNotOwner:           "فقط منظم هذه الفعالية يمكنه القيام بذلك",
	ErrRateLimited:        "طلبات كثيرة جدًا، يرجى المحاولة لاحقًا",
	ErrUploadsDisabled:    "رفع الصور غير متاح",
	ErrInvalidUpload:      "صورة غير مدعومة أو كبيرة جدًا",
	ErrInternal:           "حدث خطأ ما، يرجى المحاولة لاحقًا",

	CommonHome:      "الرئيسية",
	CommonAbout:     "حول",
	CommonLogin:     "تسجيل الدخول",
	CommonRegister:  "التسجيل",
	CommonDashboard: "لوحة التحكم",
	CommonSearch:    "بحث",
	CommonSortBy:    "ترتيب حسب",
	CommonCity:      "المدينة",
	CommonNewest:    "الأحدث",
	CommonUpcoming:  "القادمة",
	CommonPopular:   "الأكثر شعبية",
	CommonAll:       "الكل",
	CommonDays:      "أيام",
	CommonHours:     "ساعات",
	CommonMinutes:   "دقائق",
	CommonSeconds:   "ثواني",
	CommonLogout:    "تسجيل الخروج",

	HomeTitle:       "اكتشف الفعاليات القادمة في المغرب",
	HomeSubtitle:    "العد التنازلي المميز للتجارب الثقافية المغربية",
	HomeNoEvents:    "لم يتم العثور على فعاليات",
	HomeSearchHint:  "البحث عن الفعاليات...",
	HomeCityFilter:  "تصفية حسب المدينة",
	HomeUpcomingTtl: "الفعاليات القادمة",

	EventStartDate: "تاريخ البدء",
	EventEndDate:   "تاريخ الانتهاء",
	EventLocation:  "الموقع",
	EventOrganizer: "المنظم",
	EventCategory:  "الفئة",
	EventRegister:  "التسجيل في هذه الفعالية",
	EventShare:     "مشاركة هذه الفعالية",
	EventJoined:    "منضم",

	DashboardMyEvents:    "فعالياتي",
	DashboardCreateEvent: "إنشاء فعالية",
	DashboardPending:     "في انتظار الموافقة",
	DashboardApproved:    "معتمد",
	DashboardRejected:    "مرفوض",
	DashboardSubscribers: "المشتركون",
}
